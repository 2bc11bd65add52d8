package session

// Credentials is the body of POST /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the multipart body of POST /createaccount. Empty fields
// are omitted from the form.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Birthdate       string `json:"birthdate,omitempty"`
	Linkedin        string `json:"linkedin,omitempty"`
	Github          string `json:"github,omitempty"`
	Instagram       string `json:"instagram,omitempty"`
	Department      string `json:"department,omitempty"`
	Year            string `json:"year,omitempty"`
	RegisterNumber  string `json:"registerNumber,omitempty"`
}

// Form returns the non-empty fields in submission order. The confirmation
// field is not sent.
func (r SignupRequest) Form() [][2]string {
	fields := [][2]string{
		{"name", r.Name},
		{"email", r.Email},
		{"password", r.Password},
		{"birthdate", r.Birthdate},
		{"linkedin", r.Linkedin},
		{"github", r.Github},
		{"instagram", r.Instagram},
		{"department", r.Department},
		{"year", r.Year},
		{"registerNumber", r.RegisterNumber},
	}
	out := fields[:0]
	for _, f := range fields {
		if f[1] != "" {
			out = append(out, f)
		}
	}
	return out
}
