package model

import "net/http"

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    ShortUser `json:"author"`
	PostID    string    `json:"postId"`
	Votes     int       `json:"votes"`
	CreatedAt string    `json:"createdAt"`
}

type CreateCommentRequest struct {
	PostID  string `uri:"id" json:"-"`
	Content string `json:"content"`
}

type CreateCommentResponse struct {
	Comment Comment `json:"comment"`
}

func (CreateCommentResponse) HTTPStatus() int {
	return http.StatusCreated
}
