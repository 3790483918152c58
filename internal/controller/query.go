// ABOUTME: Request path builders for search and sort.
// ABOUTME: Search values go out raw; sort values are percent-encoded.
package controller

import (
	"net/url"
	"strconv"
	"strings"
)

// PostsPath lists every post.
const PostsPath = "/posts"

// SearchPath builds the search request path. Filter values are appended
// verbatim, without percent-encoding, and empty filters are skipped.
func SearchPath(title, content string) string {
	path := PostsPath + "/search?"
	if title != "" {
		path += "title=" + title + "&"
	}
	if content != "" {
		path += "content=" + content
	}
	return path
}

// SortPath builds the sorted listing path. Each non-empty value is
// percent-encoded; the query is omitted when both are empty.
func SortPath(field, direction string) string {
	var params []string
	if field != "" {
		params = append(params, "sort="+escapeComponent(field))
	}
	if direction != "" {
		params = append(params, "direction="+escapeComponent(direction))
	}
	if len(params) == 0 {
		return PostsPath
	}
	return PostsPath + "?" + strings.Join(params, "&")
}

// PostPath addresses a single post.
func PostPath(id int64) string {
	return PostsPath + "/" + strconv.FormatInt(id, 10)
}

// componentUnescapes restores the characters encodeURIComponent leaves alone
// but url.QueryEscape encodes.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent encodes s for use as one query value, like encodeURIComponent.
func escapeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
