package api

import (
	"net/url"
	"strconv"
)

func urlEscape(s string) string { return url.QueryEscape(s) }

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
