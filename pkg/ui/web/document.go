package web

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

//go:embed assets
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "assets/index.html"))

type pageData struct {
	Title      string
	Stylesheet template.CSS
	Script     template.JS
	Logo       template.URL
	BridgePath string
}

// renderDocument builds the single self-contained page the bridge serves. The
// stylesheet, script and logo are inlined so the page needs no further requests.
func renderDocument(title, bridgePath, logoPath string) ([]byte, error) {
	css, err := assets.ReadFile("assets/stylesheet.css")
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	js, err := assets.ReadFile("assets/main.js")
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	logo, err := loadLogo(logoPath)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:      title,
		Stylesheet: template.CSS(css),
		Script:     template.JS(js),
		Logo:       logo,
		BridgePath: bridgePath,
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// loadLogo returns the logo as a data URI. An empty path selects the embedded logo.
func loadLogo(path string) (template.URL, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = assets.ReadFile("assets/logo.svg")
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	mtype, _, _ := strings.Cut(mimetype.Detect(raw).String(), ";")
	uri := "data:" + mtype + ";base64," + base64.StdEncoding.EncodeToString(raw)
	return template.URL(uri), nil
}
