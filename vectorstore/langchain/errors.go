package langchain

import "errors"

// ErrStoreRequired indicates the adapter was built without a backing store.
var ErrStoreRequired = errors.New("backing vector store is required")
