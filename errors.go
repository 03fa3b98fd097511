package affiche

import "errors"

// ErrClientClosed indicates the client has already been closed.
var ErrClientClosed = errors.New("client is closed")
