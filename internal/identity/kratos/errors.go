package kratos

import (
	"encoding/json"
	"strings"

	"assetdesk/internal/identity"
)

// Kratos UI message ids, see https://www.ory.sh/docs/kratos/concepts/ui-messages
const (
	msgValidationGeneric   = 4000001
	msgRequired            = 4000002
	msgMinLength           = 4000003
	msgInvalidFormat       = 4000004
	msgPasswordPolicy      = 4000005
	msgInvalidCredentials  = 4000006
	msgDuplicateIdentifier = 4000007
	msgDuplicateHint       = 4000027
	msgDuplicateLink       = 4000028
	msgAccountNotFound     = 4000035
)

type uiText struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type uiNode struct {
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
	Messages []uiText `json:"messages"`
}

type flowBody struct {
	UI struct {
		Messages []uiText `json:"messages"`
		Nodes    []uiNode `json:"nodes"`
	} `json:"ui"`
}

// codeFromBody maps the first recognised UI message in a failed flow to a
// provider code. Flow-level messages take precedence over field messages.
func codeFromBody(body []byte) identity.Code {
	var flow flowBody
	if err := json.Unmarshal(body, &flow); err != nil {
		return identity.CodeGeneric
	}

	for _, msg := range flow.UI.Messages {
		if code, ok := codeFor(msg.ID, ""); ok {
			return code
		}
	}
	for _, node := range flow.UI.Nodes {
		for _, msg := range node.Messages {
			if code, ok := codeFor(msg.ID, node.Attributes.Name); ok {
				return code
			}
		}
	}
	return identity.CodeGeneric
}

func codeFor(id int64, field string) (identity.Code, bool) {
	switch id {
	case msgInvalidCredentials:
		return identity.CodeWrongCredential, true
	case msgAccountNotFound:
		return identity.CodeAccountNotFound, true
	case msgDuplicateIdentifier, msgDuplicateHint, msgDuplicateLink:
		return identity.CodeDuplicateAccount, true
	case msgPasswordPolicy:
		return identity.CodeWeakCredential, true
	case msgMinLength:
		if field == "password" {
			return identity.CodeWeakCredential, true
		}
	case msgValidationGeneric, msgRequired, msgInvalidFormat:
		if isEmailField(field) {
			return identity.CodeInvalidEmail, true
		}
	}
	return "", false
}

func isEmailField(field string) bool {
	return field == "identifier" || strings.HasSuffix(field, traitEmail)
}
