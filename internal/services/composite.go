package services

import (
	"go.uber.org/zap"

	"kasatakip/internal/logger"
)

// opState tracks a composite write (an exchange or a salary payment) from
// submission to its terminal state.
type opState string

const (
	opProposed  opState = "proposed"
	opValidated opState = "validated"
	opCommitted opState = "committed"
	opRejected  opState = "rejected"
)

// compositeOp logs the state transitions of one composite write.
type compositeOp struct {
	log   *zap.SugaredLogger
	state opState
}

func newCompositeOp(kind, userID string) *compositeOp {
	op := &compositeOp{
		log:   logger.With("operation", kind, "user_id", userID),
		state: opProposed,
	}
	op.log.Debugw("Composite operation proposed")
	return op
}

func (op *compositeOp) validated() {
	op.state = opValidated
	op.log.Debugw("Composite operation validated")
}

// reject moves the operation to its failed terminal state and returns err.
func (op *compositeOp) reject(err error) error {
	op.state = opRejected
	op.log.Infow("Composite operation rejected", "error", err)
	return err
}

func (op *compositeOp) committed(keysAndValues ...interface{}) {
	op.state = opCommitted
	op.log.Infow("Composite operation committed", keysAndValues...)
}
