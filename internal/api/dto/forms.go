package dto

// LoginForm is posted by the resident login page.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password,omitempty" form:"password"`
}

// AdminLoginForm is posted by the admin login page.
type AdminLoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password,omitempty" form:"password"`
}

// RegisterForm is posted by the registration page.
type RegisterForm struct {
	FirstName       string `json:"firstName" form:"firstName"`
	LastName        string `json:"lastName" form:"lastName"`
	MiddleName      string `json:"middleName" form:"middleName"`
	ContactNumber   string `json:"contactNumber" form:"contactNumber"`
	Address         string `json:"address" form:"address"`
	Username        string `json:"username" form:"username"`
	Password        string `json:"password,omitempty" form:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty" form:"confirmPassword"`
}

// Redacted returns the form without its password, for re-rendering.
func (f LoginForm) Redacted() LoginForm {
	f.Password = ""
	return f
}

// Redacted returns the form without its password, for re-rendering.
func (f AdminLoginForm) Redacted() AdminLoginForm {
	f.Password = ""
	return f
}

// Redacted returns the form without its passwords, for re-rendering.
func (f RegisterForm) Redacted() RegisterForm {
	f.Password, f.ConfirmPassword = "", ""
	return f
}

// ContactForm is posted by the contact page.
type ContactForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// ComplaintForm is posted by the dashboard complaints box.
type ComplaintForm struct {
	Name    string `json:"name,omitempty" form:"name"`
	Email   string `json:"email,omitempty" form:"email"`
	Message string `json:"message" form:"message"`
}

// SuggestionForm is posted by the project suggestion page.
type SuggestionForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// ProjectForm is posted by the admin projects page.
type ProjectForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// OfficialForm is posted by the admin officials page.
type OfficialForm struct {
	Name          string `json:"name" form:"name"`
	Position      string `json:"position" form:"position"`
	Term          string `json:"term" form:"term"`
	ImageURL      string `json:"imageUrl,omitempty" form:"imageUrl"`
	ImagePublicID string `json:"imagePublicId,omitempty" form:"imagePublicId"`
}

// NewsForm is posted by the admin news page.
type NewsForm struct {
	Title         string `json:"title" form:"title"`
	Date          string `json:"date" form:"date"`
	Description   string `json:"description" form:"description"`
	ImageURL      string `json:"imageUrl,omitempty" form:"imageUrl"`
	ImagePublicID string `json:"imagePublicId,omitempty" form:"imagePublicId"`
}

// FundForm is posted by the admin funds page.
type FundForm struct {
	Source      string `json:"source" form:"source"`
	Description string `json:"description" form:"description"`
	Amount      string `json:"amount" form:"amount"`
	Date        string `json:"date" form:"date"`
}

// HomeForm is posted by the admin home editor.
type HomeForm struct {
	ID       string `json:"_id,omitempty" form:"_id"`
	Title    string `json:"title" form:"title"`
	SubTitle string `json:"subTitle" form:"subTitle"`
	Content  string `json:"content" form:"content"`
}

// DashboardStat is one counter on the admin dashboard.
type DashboardStat struct {
	Resource string `json:"resource"`
	Count    int    `json:"count"`
}
