package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strconv"

	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/models"
)

func normalizeList(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		out := make([]byte, 0, len(trimmed)+2)
		out = append(out, '[')
		out = append(out, trimmed...)
		return append(out, ']')
	}
	return trimmed
}

// idJSON sends numeric ids as numbers, matching what the server issued.
func idJSON(id models.FlexID) json.RawMessage {
	s := id.String()
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return json.RawMessage(s)
	}
	quoted, _ := json.Marshal(s)
	return quoted
}

func asNetwork(err error, target **errors.NetworkError) bool {
	return stderrors.As(err, target)
}
