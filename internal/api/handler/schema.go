package handler

// Request and response types for the public API. Field names are part of the
// wire contract and must not change.

// --- User ---

type signupRequest struct {
	FirstName     string `json:"firstName"     validate:"required"`
	LastName      string `json:"lastName"      validate:"required"`
	UserName      string `json:"userName"      validate:"required"`
	EmailAddress  string `json:"emailAddress"  validate:"required,email"`
	Password      string `json:"password"      validate:"required"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

type signupResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type signinResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type signoutResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type userDetailsResponse struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	EmailAddress  string `json:"emailAddress"`
	DOB           string `json:"dob"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	ContactNumber string `json:"contactNumber"`
}

type userDeleteResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// --- Questions ---

type questionRequest struct {
	Content string `json:"content" validate:"required"`
}

type questionStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type questionDetailsResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// --- Answers ---

type answerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type answerStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type answerDetailsResponse struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Content    string `json:"content"`
}
