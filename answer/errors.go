package answer

import "errors"

// ErrCompleterRequired is returned when a chat completer is not provided.
var ErrCompleterRequired = errors.New("chat completer required")
