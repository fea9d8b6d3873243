package models

// CommentForm is the submitted comment create/edit form
type CommentForm struct {
	Text string `form:"text" json:"text"`
}

// NoteForm is the submitted note add/edit form. An empty Slug is derived
// from Title.
type NoteForm struct {
	Title string `form:"title" json:"title"`
	Text  string `form:"text" json:"text"`
	Slug  string `form:"slug" json:"slug"`
}

// LoginForm is the submitted login form
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"-"`
}

// SignupForm is the submitted registration form
type SignupForm struct {
	Username  string `form:"username" json:"username"`
	Password1 string `form:"password1" json:"-"`
	Password2 string `form:"password2" json:"-"`
}
