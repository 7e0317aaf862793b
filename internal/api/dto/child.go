package dto

type ChildResponse struct {
	ChildID   int     `json:"child_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Wish      int     `json:"wish"`
	Naughty   bool    `json:"naughty"`
	ArticleID int     `json:"article_id"`
}

type ListChildrenResponse struct {
	Children []ChildResponse `json:"children"`
}
