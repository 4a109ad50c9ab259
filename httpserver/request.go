package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"cinedb/pkg/fields"

	"github.com/labstack/echo/v4"
)

// requestData merges the query string, the form body and a JSON object body
// into one map. Later sources win: query < form < JSON.
func requestData(c echo.Context) (fields.Data, error) {
	data := fields.Data{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		if err := decodeJSONObject(c.Request().Body, data); err != nil {
			return nil, err
		}
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		form, err := c.FormParams()
		if err != nil {
			return nil, fields.ErrMalformedInput
		}
		for key, values := range form {
			if len(values) > 0 {
				data[key] = values[0]
			}
		}
	}
	return data, nil
}

// decodeJSONObject copies the members of a flat JSON object into data.
// Numbers keep their literal text, booleans become "true"/"false" and null
// becomes an empty string. An empty body adds nothing.
func decodeJSONObject(r io.Reader, data fields.Data) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fields.ErrMalformedInput
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fields.ErrMalformedInput
	}

	for key, value := range body {
		switch v := value.(type) {
		case string:
			data[key] = v
		case json.Number:
			data[key] = v.String()
		case bool:
			data[key] = strconv.FormatBool(v)
		case nil:
			data[key] = ""
		default:
			return fields.ErrNestedValue
		}
	}
	return nil
}
