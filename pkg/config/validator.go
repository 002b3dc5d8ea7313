package config

import "fmt"

// Validator performs structural validation over a loaded Config.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator bound to the given configuration.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll runs every structural check and returns the first failure.
func (v *Validator) ValidateAll() error {
	if err := v.validateDefaults(); err != nil {
		return err
	}
	if err := v.validateDirector(); err != nil {
		return err
	}
	if err := v.validateLLMProviders(); err != nil {
		return err
	}
	return nil
}

func (v *Validator) validateDefaults() error {
	d := v.cfg.Defaults
	if !d.ConsiliumMode.IsValid() {
		return NewValidationError("defaults", "consilium_mode", "", fmt.Errorf("%w: %s", ErrInvalidValue, d.ConsiliumMode))
	}
	if d.KBTopK <= 0 {
		return NewValidationError("defaults", "kb_top_k", "", ErrMissingRequiredField)
	}
	if d.KBMaxChars <= 0 {
		return NewValidationError("defaults", "kb_max_chars", "", ErrMissingRequiredField)
	}
	if d.KBCacheSize <= 0 {
		return NewValidationError("defaults", "kb_cache_size", "", ErrMissingRequiredField)
	}
	return nil
}

func (v *Validator) validateDirector() error {
	dir := v.cfg.Director
	if !dir.Mode.IsValid() {
		return NewValidationError("director", "mode", "", fmt.Errorf("%w: %s", ErrInvalidValue, dir.Mode))
	}
	if dir.Limits == nil {
		return NewValidationError("director", "limits", "", ErrMissingRequiredField)
	}
	if dir.PrefilterConfLT <= 0 || dir.PrefilterConfLT > 1 {
		return NewValidationError("director", "prefilter_conf_lt", "", ErrInvalidValue)
	}
	if dir.LowConfLT <= 0 || dir.LowConfLT > 1 {
		return NewValidationError("director", "low_conf_lt", "", ErrInvalidValue)
	}
	return nil
}

func (v *Validator) validateLLMProviders() error {
	for name, p := range v.cfg.LLMProviderRegistry.GetAll() {
		if p.BaseURL == "" {
			return NewValidationError("llm_provider", name, "base_url", ErrMissingRequiredField)
		}
		if p.Model == "" {
			return NewValidationError("llm_provider", name, "model", ErrMissingRequiredField)
		}
	}
	return nil
}
