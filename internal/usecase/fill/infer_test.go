package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-automation/internal/domain/entity"
)

var testRequest = entity.AutomationRequest{
	Email:           "a@b.com",
	FullNameArabic:  "محمد أحمد علي حسن",
	FullNameEnglish: "Mohamed Ahmed",
	Phone:           "01012345678",
	NationalID:      "29901011234567",
	ExamLanguage:    "اللغة العربية",
}

func TestInferRole_FirstMatchWins(t *testing.T) {
	tests := []struct {
		name  string
		attrs entity.Attributes
		want  entity.Role
	}{
		{"email by type", entity.Attributes{Type: "email"}, entity.RoleEmail},
		{"email by name", entity.Attributes{Type: "text", Name: "user_email"}, entity.RoleEmail},
		{"email by arabic placeholder", entity.Attributes{Type: "text", Placeholder: "البريد الالكتروني"}, entity.RoleEmail},
		{"phone by type", entity.Attributes{Type: "tel"}, entity.RolePhone},
		{"phone by arabic keyword", entity.Attributes{Type: "text", Placeholder: "رقم الموبايل"}, entity.RolePhone},
		{"phone by name", entity.Attributes{Type: "text", Name: "mobileNumber"}, entity.RolePhone},
		{"national id english", entity.Attributes{Type: "text", Name: "national_id"}, entity.RoleNationalID},
		{"national id arabic", entity.Attributes{Type: "text", Placeholder: "الرقم القومي"}, entity.RoleNationalID},
		{"arabic name explicit", entity.Attributes{Type: "text", Placeholder: "الاسم باللغة العربية"}, entity.RoleArabicName},
		{"english name explicit", entity.Attributes{Type: "text", Placeholder: "name in english"}, entity.RoleEnglishName},
		{"password by type", entity.Attributes{Type: "password", Name: "anything"}, entity.RolePassword},
		{"no match", entity.Attributes{Type: "text", Name: "captcha"}, entity.RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferRole(tt.attrs, NewAssignState(), ArabicFirst)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Explicitly labeled controls must land correctly regardless of DOM order.
func TestPlan_ExplicitLabels_OrderIndependent(t *testing.T) {
	forward := []entity.Attributes{
		{Type: "text", Placeholder: "الاسم عربي"},
		{Type: "text", Placeholder: "name in english"},
		{Type: "email", Name: "email"},
		{Type: "tel", Name: "phone"},
	}
	reversed := []entity.Attributes{forward[3], forward[2], forward[1], forward[0]}

	for name, attrs := range map[string][]entity.Attributes{"forward": forward, "reversed": reversed} {
		t.Run(name, func(t *testing.T) {
			byRole := map[entity.Role]string{}
			for _, as := range Plan(attrs, testRequest, "", ArabicFirst) {
				byRole[as.Role] = as.Value
			}

			assert.Equal(t, testRequest.FullNameArabic, byRole[entity.RoleArabicName])
			assert.Equal(t, testRequest.FullNameEnglish, byRole[entity.RoleEnglishName])
			assert.Equal(t, testRequest.Email, byRole[entity.RoleEmail])
			assert.Equal(t, testRequest.Phone, byRole[entity.RolePhone])
		})
	}
}

// Positional fallback law: with two unlabeled name controls the first gets
// the Arabic name and the second the English name.
func TestPlan_UnlabeledNames_PositionalFallback(t *testing.T) {
	attrs := []entity.Attributes{
		{Type: "text", Name: "name1", Placeholder: "الاسم"},
		{Type: "text", Name: "name2", Placeholder: "الاسم"},
	}

	plan := Plan(attrs, testRequest, "", ArabicFirst)
	require.Len(t, plan, 2)

	assert.Equal(t, 0, plan[0].Index)
	assert.Equal(t, entity.RoleArabicName, plan[0].Role)
	assert.Equal(t, testRequest.FullNameArabic, plan[0].Value)

	assert.Equal(t, 1, plan[1].Index)
	assert.Equal(t, entity.RoleEnglishName, plan[1].Role)
	assert.Equal(t, testRequest.FullNameEnglish, plan[1].Value)
}

func TestPlan_UnlabeledNames_EnglishFirstPolicy(t *testing.T) {
	attrs := []entity.Attributes{
		{Type: "text", Name: "fullname"},
		{Type: "text", Name: "fullname2"},
	}
	// "fullname" contains "name", so both are name-like without a language
	// keyword.
	plan := Plan(attrs, testRequest, "", EnglishFirst)
	require.Len(t, plan, 2)
	assert.Equal(t, entity.RoleEnglishName, plan[0].Role)
	assert.Equal(t, entity.RoleArabicName, plan[1].Role)
}

// An explicit Arabic label plus one unlabeled name control: the unlabeled
// one takes the remaining (English) slot.
func TestPlan_MixedLabeledAndUnlabeledNames(t *testing.T) {
	attrs := []entity.Attributes{
		{Type: "text", Placeholder: "الاسم بالعربية"},
		{Type: "text", Placeholder: "الاسم"},
	}

	plan := Plan(attrs, testRequest, "", ArabicFirst)
	require.Len(t, plan, 2)
	assert.Equal(t, entity.RoleArabicName, plan[0].Role)
	assert.Equal(t, entity.RoleEnglishName, plan[1].Role)
}

// Every password control on the page gets the same generated credential.
func TestPlan_PasswordBroadcast(t *testing.T) {
	attrs := []entity.Attributes{
		{Type: "password", Name: "password"},
		{Type: "email", Name: "email"},
		{Type: "password", Name: "password_confirmation"},
	}

	plan := Plan(attrs, testRequest, "S3cret!x", ArabicFirst)
	require.Len(t, plan, 3)

	var passwords []int
	for _, as := range plan {
		if as.Role == entity.RolePassword {
			passwords = append(passwords, as.Index)
			assert.Equal(t, "S3cret!x", as.Value)
		}
	}
	assert.Equal(t, []int{0, 2}, passwords)
}

// A duplicate match for an already-claimed role is left untouched.
func TestPlan_DuplicateRoleNotRefilled(t *testing.T) {
	attrs := []entity.Attributes{
		{Type: "email", Name: "email"},
		{Type: "text", Name: "email_confirmation"},
	}

	plan := Plan(attrs, testRequest, "", ArabicFirst)
	require.Len(t, plan, 1)
	assert.Equal(t, 0, plan[0].Index)
}

// A role with no value still claims its slot so a later duplicate cannot
// receive a value meant for the first control.
func TestPlan_EmptyValueStillClaimsRole(t *testing.T) {
	req := testRequest
	req.Email = ""
	attrs := []entity.Attributes{
		{Type: "email", Name: "email"},
		{Type: "text", Name: "backup_email"},
	}

	plan := Plan(attrs, req, "", ArabicFirst)
	assert.Empty(t, plan)
}

// The end-to-end fill scenario from the booking form: two unlabeled name
// inputs, an email input, a tel input. All four receive values.
func TestPlan_BookingFormScenario(t *testing.T) {
	attrs := []entity.Attributes{
		{Type: "text", Name: "student_name"},
		{Type: "text", Name: "student_name_en", Placeholder: "الاسم"},
		{Type: "email", Name: "email"},
		{Type: "tel", Name: "phone"},
	}

	plan := Plan(attrs, testRequest, "", ArabicFirst)
	require.Len(t, plan, 4)

	assert.Equal(t, testRequest.FullNameArabic, plan[0].Value)
	assert.Equal(t, testRequest.FullNameEnglish, plan[1].Value)
	assert.Equal(t, testRequest.Email, plan[2].Value)
	assert.Equal(t, testRequest.Phone, plan[3].Value)
}
