package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/estatehub/marketplace/internal/property/domain"
)

// buildPropertyQuery translates a domain filter into a Mongo query
// document. Every supplied constraint contributes one conjunct:
//
//	city      -> case-insensitive substring regex
//	type      -> exact match
//	min/max   -> inclusive bounds merged into a single price range
//	bedrooms  -> at-least-N ($gte)
//
// onlyActive additionally constrains to visible documents. Documents
// written before the flag existed have no is_active field; they count
// as active, so the constraint is "not explicitly false".
func buildPropertyQuery(filter domain.Filter, onlyActive bool) bson.M {
	query := bson.M{}

	if filter.City != "" {
		query["city"] = bson.M{"$regex": regexp.QuoteMeta(filter.City), "$options": "i"}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}
	if filter.Bedrooms > 0 {
		query["bedrooms"] = bson.M{"$gte": filter.Bedrooms}
	}
	if onlyActive {
		query["is_active"] = bson.M{"$ne": false}
	}
	return query
}
