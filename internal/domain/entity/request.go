package entity

// AutomationRequest carries the student-supplied fields for one automation run.
// It is immutable for the duration of the run.
type AutomationRequest struct {
	RequestID          string
	StudentID          string
	Email              string
	FullNameArabic     string
	FullNameEnglish    string
	Phone              string
	NationalID         string
	ExamLanguage       string
	TransformationType string
}
