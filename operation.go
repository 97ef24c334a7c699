package cwl

// Operation is the v1.2 abstract process placeholder. It declares
// inputs and outputs but carries nothing runnable.

type OperationInputParameter struct {
	InputParameterBase `json:",inline"`
	Type               SaladType `json:"type" salad:"type"`
}

type OperationOutputParameter struct {
	OutputParameterBase `json:",inline"`
	Type                SaladType `json:"type" salad:"type"`
}

type Operation struct {
	ClassBase   `json:",inline"`
	ProcessBase `json:",inline"`
}
