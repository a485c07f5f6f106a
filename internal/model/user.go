package model

type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
	CreatedAt  string `json:"createdAt"`
}

// ShortUser is the author summary attached to posts and comments.
type ShortUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Reputation int    `json:"reputation"`
}

// Profile is the identity returned after login or profile update.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type GetUserActivityRequest struct {
	ID string `uri:"id"`
}

type GetUserActivityResponse struct {
	Posts    []Post            `json:"posts"`
	Comments []ActivityComment `json:"comments"`
	Votes    []ActivityVote    `json:"votes"`
	Follows  []ActivityFollow  `json:"follows"`
}

type ActivityComment struct {
	Comment
	Post PostSummary `json:"post"`
}

type ActivityVote struct {
	ID        string      `json:"id"`
	VoteType  string      `json:"voteType"`
	CreatedAt string      `json:"createdAt"`
	Post      PostSummary `json:"post"`
}

type ActivityFollow struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"createdAt"`
	Post      PostSummary `json:"post"`
}

type UpdateUserRequest struct {
	ID              string `uri:"id" json:"-"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateUserResponse struct {
	User Profile `json:"user"`
}
