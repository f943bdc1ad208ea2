package weavetest

import "github.com/iov-one/quorum"

// Handler is a mock implementation of the quorum.Handler interface that
// counts its calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult quorum.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult quorum.DeliverResult
	DeliverErr    error
}

var _ quorum.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes Key/Value to the store on both Check and Deliver
// and then returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ quorum.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &quorum.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &quorum.DeliverResult{}, nil
}

// PanicHandler always panics with the given value.
type PanicHandler struct {
	Value interface{}
}

var _ quorum.Handler = PanicHandler{}

func (h PanicHandler) Check(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.DeliverResult, error) {
	panic(h.Value)
}
