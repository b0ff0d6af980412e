package component

import "github.com/PvttJebus/OhMyGord/params"

type Parameters struct {
	Store *params.Store
}

var ParametersComponent = NewComponent[Parameters]()
