package domain

// BlogStats summarizes one blog for aggregate reporting.
type BlogStats struct {
	Title  string
	Author string
	Likes  int
}

// TotalLikes sums likes across blogs. An empty list totals zero.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// list. On a tie the first maximum in iteration order wins.
func FavoriteBlog(blogs []Blog) *BlogStats {
	if len(blogs) == 0 {
		return nil
	}
	favorite := blogs[0]
	for _, blog := range blogs[1:] {
		if blog.Likes > favorite.Likes {
			favorite = blog
		}
	}
	return &BlogStats{
		Title:  favorite.Title,
		Author: favorite.Author,
		Likes:  favorite.Likes,
	}
}
