package cwl

// lookup scans a requirement list for a class name.
func (r Requirements) lookup(class string) Requirement {
	for _, req := range r {
		if req.ClassName() == class {
			return req
		}
	}
	return nil
}

func (p *ProcessBase) RequiresInlineJavascript() *InlineJavascriptRequirement {
	if req := p.Requirements.lookup("InlineJavascriptRequirement"); req != nil {
		return req.(*InlineJavascriptRequirement)
	}
	return nil
}

func (p *ProcessBase) RequiresSchemaDef() *SchemaDefRequirement {
	if req := p.Requirements.lookup("SchemaDefRequirement"); req != nil {
		return req.(*SchemaDefRequirement)
	}
	return nil
}

func (p *ProcessBase) RequiresLoadListing() *LoadListingRequirement {
	if req := p.Requirements.lookup("LoadListingRequirement"); req != nil {
		return req.(*LoadListingRequirement)
	}
	return nil
}

func (p *ProcessBase) RequiresSoftware() *SoftwareRequirement {
	if req := p.Requirements.lookup("SoftwareRequirement"); req != nil {
		return req.(*SoftwareRequirement)
	}
	return nil
}

// HintsSoftware returns the SoftwareRequirement hint, whether it was
// decoded as the typed requirement or kept as an open hint.
func (p *ProcessBase) HintsSoftware() (*SoftwareRequirement, error) {
	hint := p.Hints.lookup("SoftwareRequirement")
	if hint == nil {
		return nil, nil
	}
	if req, ok := hint.(*SoftwareRequirement); ok {
		return req, nil
	}
	if unknown, ok := hint.(*UnknownRequirement); ok {
		return unknown.AsSoftwareRequirement()
	}
	return nil, nil
}

func (c *CommandLineTool) RequiresDocker() *DockerRequirement {
	if req := c.Requirements.lookup("DockerRequirement"); req != nil {
		return req.(*DockerRequirement)
	}
	if hint := c.Hints.lookup("DockerRequirement"); hint != nil {
		if req, ok := hint.(*DockerRequirement); ok {
			return req
		}
	}
	return nil
}

func (c *CommandLineTool) RequiresEnvVar() *EnvVarRequirement {
	if req := c.Requirements.lookup("EnvVarRequirement"); req != nil {
		return req.(*EnvVarRequirement)
	}
	return nil
}

func (c *CommandLineTool) RequiresShellCommand() *ShellCommandRequirement {
	if req := c.Requirements.lookup("ShellCommandRequirement"); req != nil {
		return req.(*ShellCommandRequirement)
	}
	return nil
}

func (c *CommandLineTool) RequiresResource() *ResourceRequirement {
	if req := c.Requirements.lookup("ResourceRequirement"); req != nil {
		return req.(*ResourceRequirement)
	}
	return nil
}

func (c *CommandLineTool) RequiresInitialWorkDir() *InitialWorkDirRequirement {
	if req := c.Requirements.lookup("InitialWorkDirRequirement"); req != nil {
		return req.(*InitialWorkDirRequirement)
	}
	return nil
}

func (c *CommandLineTool) RequiresToolTimeLimit() *ToolTimeLimit {
	if req := c.Requirements.lookup("ToolTimeLimit"); req != nil {
		return req.(*ToolTimeLimit)
	}
	return nil
}

func (w *Workflow) RequiresSubworkflow() bool {
	return w.Requirements.lookup("SubworkflowFeatureRequirement") != nil
}

func (w *Workflow) RequiresScatter() bool {
	return w.Requirements.lookup("ScatterFeatureRequirement") != nil
}

func (w *Workflow) RequiresMultipleInput() bool {
	return w.Requirements.lookup("MultipleInputFeatureRequirement") != nil
}

func (w *Workflow) RequiresStepInputExpression() bool {
	return w.Requirements.lookup("StepInputExpressionRequirement") != nil
}

// AsSoftwareRequirement re-reads an open hint whose class is
// SoftwareRequirement into the typed form.
func (u *UnknownRequirement) AsSoftwareRequirement() (*SoftwareRequirement, error) {
	raw, err := u.MarshalJSON()
	if err != nil {
		return nil, err
	}
	req := &SoftwareRequirement{}
	if err := JsonUnmarshal(raw, req); err != nil {
		return nil, err
	}
	return req, nil
}
