package agentserver

import "errors"

// ErrRemoteMismatch means the served agent disagrees with the local rules,
// usually because it was trained for a different board size.
var ErrRemoteMismatch = errors.New("remote agent disagrees with local rules")
