// Package catalog is the static registry of verification services the
// console offers: which category each belongs to, which provider endpoint it
// calls, and which input fields it requires.
package catalog

import (
	"fmt"
	"strings"
)

// Category groups services the way the console presents them.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Categories = []Category{
	{ID: "employment", Label: "Employment Verification"},
	{ID: "gstin", Label: "GSTIN Verification"},
	{ID: "vehicle", Label: "Vehicle Verification"},
	{ID: "financial", Label: "Financial Services"},
	{ID: "healthcare", Label: "Healthcare & Insurance"},
	{ID: "education", Label: "Education Verification"},
}

// Service is one verification operation type. Fields is ordered; the order
// drives CSV templates and provider payload layout.
type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Endpoint    string   `json:"-"`
	Fields      []string `json:"fields"`
}

var services = []Service{
	// Employment
	{ID: "bank-account", Name: "Bank Account Verification", Category: "employment",
		Description: "Verify bank account details and ownership",
		Endpoint:    "/bank/verify", Fields: []string{"account_number", "ifsc_code", "name"}},
	{ID: "pan", Name: "PAN Verification", Category: "employment",
		Description: "Validate PAN card details and status",
		Endpoint:    "/pan/verify", Fields: []string{"pan_number", "name"}},
	{ID: "aadhaar", Name: "Aadhaar Verification", Category: "employment",
		Description: "Verify Aadhaar details and demographics",
		Endpoint:    "/aadhaar/verify", Fields: []string{"aadhaar_number", "name"}},
	{ID: "mobile-otp", Name: "Mobile OTP", Category: "employment",
		Description: "Mobile number verification via OTP",
		Endpoint:    "/mobile/send-otp", Fields: []string{"mobile_number"}},
	{ID: "mobile-otp-verify", Name: "Mobile OTP Confirmation", Category: "employment",
		Description: "Confirm a previously issued mobile OTP",
		Endpoint:    "/mobile/verify-otp", Fields: []string{"mobile_number", "otp"}},
	{ID: "digilocker", Name: "Digilocker", Category: "employment",
		Description: "Access documents from Digilocker",
		Endpoint:    "/digilocker/access", Fields: []string{"digilocker_id"}},
	{ID: "voter-id", Name: "Voter ID", Category: "employment",
		Description: "Verify voter ID card details",
		Endpoint:    "/voter-id/verify", Fields: []string{"voter_id", "name"}},
	{ID: "passport", Name: "Passport", Category: "employment",
		Description: "Passport verification and validation",
		Endpoint:    "/passport/verify", Fields: []string{"passport_number", "name"}},
	{ID: "employee-details", Name: "Employee Details", Category: "employment",
		Description: "Verify employment and salary details",
		Endpoint:    "/employee/verify", Fields: []string{"employee_id", "company_name"}},
	{ID: "name-match", Name: "Name Match", Category: "employment",
		Description: "Cross-verify names across documents",
		Endpoint:    "/name/match", Fields: []string{"name1", "name2"}},

	// GSTIN
	{ID: "gstin", Name: "GSTIN Verification", Category: "gstin",
		Description: "Verify GSTIN registration",
		Endpoint:    "/gstin/verify", Fields: []string{"gstin_number", "business_name"}},

	// Vehicle
	{ID: "vehicle-rc", Name: "Vehicle RC Verification", Category: "vehicle",
		Description: "Verify vehicle registration certificate details",
		Endpoint:    "/vehicle/rc/verify", Fields: []string{"registration_number", "owner_name"}},
	{ID: "driving-licence", Name: "Driving Licence Verification", Category: "vehicle",
		Description: "Validate driving licence and holder details",
		Endpoint:    "/driving-licence/verify", Fields: []string{"licence_number", "holder_name", "date_of_birth"}},

	// Financial
	{ID: "credit-score", Name: "Credit Score Check", Category: "financial",
		Description: "Check credit score and history",
		Endpoint:    "/credit-score/check", Fields: []string{"pan_number", "mobile_number"}},
	{ID: "bank-statement", Name: "Bank Statement Analysis", Category: "financial",
		Description: "Analyze bank statement activity",
		Endpoint:    "/bank-statement/analyze", Fields: []string{"account_number", "bank_name", "statement_period"}},
	{ID: "income-verification", Name: "Income Verification", Category: "financial",
		Description: "Verify declared income against employer records",
		Endpoint:    "/income/verify", Fields: []string{"pan_number", "employer_name", "salary_account"}},
	{ID: "loan-eligibility", Name: "Loan Eligibility Check", Category: "financial",
		Description: "Check loan eligibility",
		Endpoint:    "/loan/eligibility", Fields: []string{"pan_number", "monthly_income", "loan_amount"}},

	// Healthcare
	{ID: "medical-license", Name: "Medical License Verification", Category: "healthcare",
		Description: "Verify medical practitioner license and credentials",
		Endpoint:    "/medical-license/verify", Fields: []string{"license_number", "doctor_name", "specialization"}},
	{ID: "insurance-verification", Name: "Insurance Policy Verification", Category: "healthcare",
		Description: "Validate insurance policy details and coverage",
		Endpoint:    "/insurance/verify", Fields: []string{"policy_number", "insurer_name", "policy_holder"}},
	{ID: "pharmacy-license", Name: "Pharmacy License Verification", Category: "healthcare",
		Description: "Verify pharmacy license and drug permit details",
		Endpoint:    "/pharmacy-license/verify", Fields: []string{"license_number", "pharmacy_name", "permit_type"}},

	// Education
	{ID: "degree-verification", Name: "Degree Verification", Category: "education",
		Description: "Verify educational degrees",
		Endpoint:    "/degree/verify", Fields: []string{"degree_number", "university_name", "student_name", "graduation_year"}},
	{ID: "professional-certification", Name: "Professional Certification", Category: "education",
		Description: "Verify professional certifications",
		Endpoint:    "/certification/verify", Fields: []string{"certificate_number", "certifying_body", "certificate_holder"}},
	{ID: "regulatory-compliance", Name: "Regulatory Compliance Check", Category: "education",
		Description: "Check a license against its regulatory body",
		Endpoint:    "/regulatory/verify", Fields: []string{"license_number", "regulatory_body", "license_holder", "license_type"}},
}

var byID = func() map[string]Service {
	m := make(map[string]Service, len(services))
	for _, s := range services {
		m[s.ID] = s
	}
	return m
}()

// Lookup returns the service definition for id.
func Lookup(id string) (Service, bool) {
	s, ok := byID[id]
	return s, ok
}

// All returns every service in catalog order.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// ByCategory returns the services of one category in catalog order.
func ByCategory(categoryID string) []Service {
	var out []Service
	for _, s := range services {
		if s.Category == categoryID {
			out = append(out, s)
		}
	}
	return out
}

// CategoryLabel resolves a category ID to its display label, falling back to
// the raw ID for unknown categories.
func CategoryLabel(categoryID string) string {
	for _, c := range Categories {
		if c.ID == categoryID {
			return c.Label
		}
	}
	return categoryID
}

// sample values for CSV templates, keyed by field name.
var fieldExamples = map[string]string{
	"account_number":      "12345678901",
	"ifsc_code":           "SBIN0001234",
	"name":                "John Doe",
	"pan_number":          "ABCDE1234F",
	"aadhaar_number":      "123456789012",
	"gstin_number":        "22AAAAA0000A1Z5",
	"business_name":       "Sample Business",
	"registration_number": "MH01AB1234",
	"owner_name":          "John Doe",
	"licence_number":      "MH0120200012345",
	"holder_name":         "John Doe",
	"date_of_birth":       "1990-01-01",
	"mobile_number":       "9876543210",
}

// Template renders the CSV upload template for a service: a header row of
// its fields plus one example row.
func (s Service) Template() string {
	examples := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		if v, ok := fieldExamples[f]; ok {
			examples[i] = v
		} else {
			examples[i] = "value"
		}
	}
	return fmt.Sprintf("%s\n%s\n", strings.Join(s.Fields, ","), strings.Join(examples, ","))
}
