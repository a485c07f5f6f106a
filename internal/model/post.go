package model

import "net/http"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Author    ShortUser `json:"author"`
	Views     int       `json:"views"`
	Votes     int       `json:"votes"`
	Answers   int       `json:"answers"`
	Bounty    int       `json:"bounty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type PostSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type GetListPostRequest struct {
	Page             int    `form:"page"`
	Limit            int    `form:"limit"`
	Tag              string `form:"tag"`
	Sort             string `form:"sort"`
	Tab              string `form:"tab"`
	NoAnswers        bool   `form:"noAnswers"`
	NoUpvotedAnswers bool   `form:"noUpvotedAnswers"`
	HasBounty        bool   `form:"hasBounty"`
	DaysOld          int    `form:"daysOld"`
	TagSearch        string `form:"tagSearch"`
}

type GetListPostResponse struct {
	Posts       []Post `json:"posts"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalPosts  int64  `json:"totalPosts"`
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

func (CreatePostResponse) HTTPStatus() int {
	return http.StatusCreated
}

type GetPostRequest struct {
	ID string `uri:"id"`
}

type GetPostResponse struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

type UpdatePostRequest struct {
	ID      string   `uri:"id" json:"-"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type UpdatePostResponse struct {
	Post Post `json:"post"`
}

type DeletePostRequest struct {
	ID string `uri:"id"`
}

type DeletePostResponse struct{}

type SearchPostRequest struct {
	Q string `form:"q"`
}

type SearchPostResponse []SearchResult

type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	Views     int    `json:"views"`
}
