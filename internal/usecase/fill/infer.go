package fill

import (
	"strings"

	"portal-automation/internal/domain/entity"
)

// NameOrderPolicy decides which name a keyword-less name control gets. The
// portal renders the Arabic name input first, so ArabicFirst is the default;
// the policy is overridable because that ordering is an assumption about a
// site this code does not control.
type NameOrderPolicy int

const (
	ArabicFirst NameOrderPolicy = iota
	EnglishFirst
)

// AssignState tracks which single-shot roles have been claimed during one
// form-fill pass. Reset between stages.
type AssignState struct {
	taken map[entity.Role]bool
}

func NewAssignState() *AssignState {
	return &AssignState{taken: make(map[entity.Role]bool)}
}

func (s *AssignState) Taken(r entity.Role) bool { return s.taken[r] }
func (s *AssignState) Mark(r entity.Role)       { s.taken[r] = true }

// InferRole assigns a semantic role to one control. Ordered, first match
// wins; roles already claimed this pass fall through to unknown, except
// password, which is broadcast to every password control on the page.
func InferRole(a entity.Attributes, st *AssignState, policy NameOrderPolicy) entity.Role {
	hay := strings.ToLower(a.Name + " " + a.Placeholder)
	typ := strings.ToLower(a.Type)

	switch {
	case typ == "password":
		return entity.RolePassword

	case typ == "email" || containsAny(hay, emailKeywords):
		if !st.Taken(entity.RoleEmail) {
			return entity.RoleEmail
		}

	case typ == "tel" || containsAny(hay, phoneKeywords):
		if !st.Taken(entity.RolePhone) {
			return entity.RolePhone
		}

	case containsAny(hay, nationalIDKeywords):
		if !st.Taken(entity.RoleNationalID) {
			return entity.RoleNationalID
		}

	case containsAny(hay, nameKeywords):
		return inferNameRole(hay, st, policy)
	}

	return entity.RoleUnknown
}

// inferNameRole disambiguates a name-like control. An explicit language
// keyword in the text decides; otherwise the first free slot in policy order
// gets it (positional fallback: first unlabeled name control is Arabic,
// second is English, under the default policy).
func inferNameRole(hay string, st *AssignState, policy NameOrderPolicy) entity.Role {
	switch {
	case containsAny(hay, arabicNameKeywords):
		if !st.Taken(entity.RoleArabicName) {
			return entity.RoleArabicName
		}
	case containsAny(hay, englishNameKeywords):
		if !st.Taken(entity.RoleEnglishName) {
			return entity.RoleEnglishName
		}
	default:
		first, second := entity.RoleArabicName, entity.RoleEnglishName
		if policy == EnglishFirst {
			first, second = second, first
		}
		if !st.Taken(first) {
			return first
		}
		if !st.Taken(second) {
			return second
		}
	}
	return entity.RoleUnknown
}

// Assignment binds a discovered control (by index into the discovery order)
// to the value it should receive.
type Assignment struct {
	Index int
	Role  entity.Role
	Value string
}

// Plan runs role inference over every control in DOM order and returns the
// assignments that carry a non-empty value. Controls that match no role are
// left untouched.
func Plan(attrs []entity.Attributes, req entity.AutomationRequest, password string, policy NameOrderPolicy) []Assignment {
	st := NewAssignState()
	var out []Assignment

	for i, a := range attrs {
		role := InferRole(a, st, policy)
		if role == entity.RoleUnknown {
			continue
		}
		if role != entity.RolePassword {
			// A matched control claims its role even when we have no value
			// for it, so a later duplicate cannot steal the slot.
			st.Mark(role)
		}

		value := valueFor(role, req, password)
		if value == "" {
			continue
		}
		out = append(out, Assignment{Index: i, Role: role, Value: value})
	}

	return out
}

func valueFor(role entity.Role, req entity.AutomationRequest, password string) string {
	switch role {
	case entity.RoleEmail:
		return req.Email
	case entity.RolePhone:
		return req.Phone
	case entity.RoleNationalID:
		return req.NationalID
	case entity.RoleArabicName:
		return req.FullNameArabic
	case entity.RoleEnglishName:
		return req.FullNameEnglish
	case entity.RolePassword:
		return password
	}
	return ""
}
