package recipe

import (
	"strconv"

	"github.com/blugelabs/bluge/search"

	"github.com/cantine/search/pkg/ferrors"
)

// IDOf extracts a match's stored record id by reading back the stored
// keyword mirror written in ToDocument — see the field's doc comment
// for why the numeric fast-field form isn't used for this.
func IDOf(match *search.DocumentMatch) (uint64, error) {
	var id uint64
	var found bool

	err := match.VisitStoredFields(func(field string, value []byte) bool {
		if field != StoredIDFieldName {
			return true
		}
		parsed, parseErr := strconv.ParseUint(string(value), 10, 64)
		if parseErr != nil {
			return true
		}
		id, found = parsed, true
		return false
	})
	if err != nil {
		return 0, ferrors.NewStorageError(err, ferrors.KindIO, "failed to visit stored fields")
	}
	if !found {
		return 0, ferrors.NewStorageError(nil, ferrors.KindIO, "match missing stored id field").WithDetail("field", StoredIDFieldName)
	}
	return id, nil
}
