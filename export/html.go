// Package export renders a loaded dataset into shareable artifacts: a
// self-contained HTML dashboard and a Power BI starter kit.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "racidash/internal/errors"

	"racidash/domain/raci"
	"racidash/web"
)

const (
	stylesTag = `<link rel="stylesheet" href="/static/styles.css">`
	scriptTag = `<script src="/static/app.js" defer></script>`
)

// HTML inlines the dashboard assets and the dataset into one file that
// opens from disk with no server behind it.
func HTML(ds *raci.Dataset) ([]byte, error) {
	if ds == nil {
		return nil, apperrors.InvalidInput("no dataset loaded")
	}

	page, err := web.Assets.ReadFile("static/index.html")
	if err != nil {
		return nil, apperrors.InternalError("read index.html", err)
	}
	css, err := web.Assets.ReadFile("static/styles.css")
	if err != nil {
		return nil, apperrors.InternalError("read styles.css", err)
	}
	js, err := web.Assets.ReadFile("static/app.js")
	if err != nil {
		return nil, apperrors.InternalError("read app.js", err)
	}

	payload, err := json.Marshal(ds)
	if err != nil {
		return nil, apperrors.InternalError("marshal dataset", err)
	}
	// </script> inside a JSON string would terminate the inline block early.
	safe := bytes.ReplaceAll(payload, []byte("</"), []byte(`<\/`))

	html := string(page)
	html = strings.Replace(html, stylesTag,
		"<style>\n"+string(css)+"\n</style>", 1)
	// Inline scripts do not honor defer, so they move to the end of body.
	html = strings.Replace(html, scriptTag, "", 1)
	html = strings.Replace(html, "</body>",
		fmt.Sprintf("<script>window.__RACI_DATA__ = %s;</script>\n<script>\n%s\n</script>\n</body>", safe, js), 1)
	html = strings.Replace(html, "<body>", `<body data-exported="true">`, 1)

	return []byte(html), nil
}
