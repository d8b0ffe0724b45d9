package httpserver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaTypeParsing(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		s  string
		t  *MediaType
		ns string
	}{
		{"text/plain",
			&MediaType{Type: "text", Subtype: "plain"},
			"text/plain"},
		{" text	/ 	 plain	",
			&MediaType{Type: "text", Subtype: "plain"},
			"text/plain"},
		{"text/plain; charset=utf-8",
			&MediaType{Type: "text", Subtype: "plain"},
			"text/plain"},
		{"application/json",
			&MediaType{Type: "application", Subtype: "json"},
			"application/json"},

		{"foo", nil, ""},
		{"foo/", nil, ""},
		{"/bar", nil, ""},
		{"foo/ ; a=b", nil, ""},
	}

	for _, test := range tests {
		label := fmt.Sprintf("%q", test.s)

		var mt MediaType
		err := mt.Parse(test.s)

		if test.t == nil {
			assert.Error(err, label)
		} else {
			if assert.NoError(err, label) {
				assert.Equal(test.t, &mt, label)
				assert.Equal(test.ns, mt.String(), label)
			}
		}
	}
}

func TestGuessMediaType(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		path string
		t    *MediaType
	}{
		{"/index.html", MediaTypeHTML},
		{"/db/user.json", MediaTypeJSON},
		{"/static/logo.png",
			&MediaType{Type: "image", Subtype: "png"}},
		{"/api/get-users", MediaTypeOctetStream},
		{"/data.nosuchext", MediaTypeOctetStream},
		{"", MediaTypeOctetStream},
	}

	for _, test := range tests {
		label := fmt.Sprintf("%q", test.path)
		assert.Equal(test.t, GuessMediaType(test.path), label)
	}
}

func TestMediaTypeBaseDirectory(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		s   string
		dir string
	}{
		{"text/plain", "static"},
		{"text/css", "static"},
		{"text/csv", "static"},
		{"text/xml", "static"},
		{"text/html", "www"},
		{"text/x-whatever", "static"},
		{"image/png", "static"},
		{"image/svg+xml", "static"},
		{"application/json", "apps"},
		{"application/pdf", "apps"},
		{"video/mp4", "video"},
		{"font/woff2", "static"},
	}

	for _, test := range tests {
		label := fmt.Sprintf("%q", test.s)

		var mt MediaType
		if !assert.NoError(mt.Parse(test.s), label) {
			continue
		}

		dir, err := mt.BaseDirectory()
		if assert.NoError(err, label) {
			assert.Equal(test.dir, dir, label)
		}
	}

	var invalid MediaType
	_, err := invalid.BaseDirectory()
	assert.Error(err)
}
