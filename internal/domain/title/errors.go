package title

import "errors"

var ErrTitleHistoryNotFound = errors.New("title history entry not found")
