package app

import (
	"github.com/sirupsen/logrus"

	"github.com/dvnc0/gimli/mux"
	"github.com/dvnc0/gimli/muxhandlers"
)

// Audit is a dispatch middleware that logs every request reaching a
// guarded route. It never rejects.
type Audit struct {
	Log logrus.FieldLogger
}

// Process logs the matched route.
func (a Audit) Process(req *mux.Request) mux.Result {
	fields := logrus.Fields{
		"method": req.Method,
		"route":  req.Route().PathTemplate(),
	}
	if id := muxhandlers.RequestIDFromContext(req.Context()); id != "" {
		fields["request_id"] = id
	}
	a.Log.WithFields(fields).Info("audit")
	return mux.Pass()
}
