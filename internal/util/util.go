// Package util provides utility functions for content hashing and front matter parsing.
package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"

	"github.com/mmarkdown/mmark/v2/mast"
)

// FrontMatter is the mmark title block of an imported file, plus the
// byte count it occupies so callers can strip it from the body.
type FrontMatter struct {
	*mast.TitleData
	Tags     []string `toml:"tags"`
	Draft    bool     `toml:"draft"`
	Consumed int      `toml:"-"`
}

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// GetFrontMatter parses a leading %%% TOML block. Only whitespace may precede it.
func GetFrontMatter(md []byte) (*FrontMatter, error) {
	md = markdown.NormalizeNewlines(md)
	trimmed := bytes.TrimLeft(md, "\n \t\r")
	lead := len(md) - len(trimmed)
	md = trimmed

	delimiter := []byte("%%%")

	if len(md) < 2*len(delimiter) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	if !bytes.HasPrefix(md, delimiter) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	second := bytes.Index(md[len(delimiter):], delimiter)
	if second == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	bodyStart := len(delimiter) + second + len(delimiter)
	frontMatter := md[len(delimiter) : len(delimiter)+second]
	info := &FrontMatter{
		TitleData: &mast.TitleData{},
	}

	if _, err := toml.Decode(string(frontMatter), info); err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	if info.Language == "" {
		info.Language = "en"
	}
	if len(info.Tags) == 0 {
		info.Tags = info.Keyword
	}
	if bodyStart < len(md) && md[bodyStart] == '\n' {
		bodyStart++
	}
	info.Consumed = lead + bodyStart

	return info, nil
}

// SplitFrontMatter returns the normalized body without its front matter
// block, and the parsed block when one is present.
func SplitFrontMatter(md []byte) ([]byte, *FrontMatter) {
	md = markdown.NormalizeNewlines(md)
	info, err := GetFrontMatter(md)
	if err != nil {
		return md, nil
	}
	return md[info.Consumed:], info
}
