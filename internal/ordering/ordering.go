// Package ordering holds the listing contracts of both sites: newest articles
// first (one page), comments oldest first, notes filtered by owner.
//
// Store implementations may already sort and limit in SQL; services apply
// these functions on top so every store gives the same listing.
package ordering

import (
	"sort"

	"github.com/newsnotes/internal/models"
)

// Articles returns at most pageSize articles, newest publish date first.
// Articles with equal dates keep their input order. The input is not modified.
func Articles(all []*models.Article, pageSize int) []*models.Article {
	out := make([]*models.Article, len(all))
	copy(out, all)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishDate.After(out[j].PublishDate)
	})
	if pageSize >= 0 && len(out) > pageSize {
		out = out[:pageSize]
	}
	return out
}

// Comments returns the comments of one article, oldest first.
// Comments created at the same instant keep their input order.
func Comments(all []*models.Comment, articleID string) []*models.Comment {
	out := make([]*models.Comment, 0, len(all))
	for _, c := range all {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Notes returns the notes owned by ownerID in input order.
func Notes(all []*models.Note, ownerID string) []*models.Note {
	out := make([]*models.Note, 0, len(all))
	if ownerID == "" {
		return out
	}
	for _, n := range all {
		if n.AuthorID == ownerID {
			out = append(out, n)
		}
	}
	return out
}
