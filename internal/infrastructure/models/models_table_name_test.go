package models

import "testing"

func TestTableNames(t *testing.T) {
	cases := map[string]interface{ TableName() string }{
		"partner_profiles":     PartnerProfile{},
		"user_profiles":        UserProfile{},
		"service_categories":   ServiceCategory{},
		"addons":               Addon{},
		"category_fields":      CategoryField{},
		"form_questions":       FormQuestion{},
		"partner_leads":        PartnerLead{},
		"partner_integrations": CRMIntegration{},
		"crm_field_mappings":   CRMFieldMapping{},
	}
	for want, m := range cases {
		if got := m.TableName(); got != want {
			t.Fatalf("unexpected table name: got %s want %s", got, want)
		}
	}
}
