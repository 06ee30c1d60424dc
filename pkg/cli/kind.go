package cli

import (
	"encoding/json"
	"fmt"
	"prioq/pkg/codec"
	"prioq/pkg/config"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/datastruct/fastpq"
	"prioq/pkg/datastruct/pqueue"
	"prioq/pkg/datastruct/prioritylist"
	"prioq/pkg/util/log"
)

const (
	KindQueue = "queue"
	KindFast  = "fast"
	KindList  = "list"
)

// store is what every collection kind offers for loading and saving.
type store interface {
	json.Marshaler
	json.Unmarshaler
	Count() int
}

func newStore(kind string) (store, error) {
	switch kind {
	case KindQueue:
		return pqueue.New[any](), nil
	case KindFast:
		return fastpq.New[any](), nil
	case KindList:
		return prioritylist.New[any](), nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q, want %s, %s or %s",
		collection.ErrInvalidArgument, kind, KindQueue, KindFast, KindList)
}

// resolveFormat prefers an explicit flag, then the file extension, then the
// configured default.
func resolveFormat(path, flag string, props *config.Properties) (codec.Format, error) {
	if flag != "" {
		return codec.ParseFormat(flag)
	}
	format, err := codec.FormatOf(path)
	if err == nil {
		return format, nil
	}
	log.Debug("%v, using configured format %s", err, props.Format)
	return codec.ParseFormat(props.Format)
}
