package api

import (
	"github.com/go-resty/resty/v2"
)

const userAgent = "packsmith/1.0"

var client = resty.New().SetHeader("User-Agent", userAgent)
