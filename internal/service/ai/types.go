package ai

// ModelPreset represents the model usage preset
type ModelPreset string

const (
	PresetCreative ModelPreset = "creative" // 창의적 응답
	PresetPrecise  ModelPreset = "precise"  // 정확한 응답
	PresetBalanced ModelPreset = "balanced" // 균형잡힌 응답
)

// ParsePreset falls back to balanced for unknown names.
func ParsePreset(name string) ModelPreset {
	switch ModelPreset(name) {
	case PresetCreative, PresetPrecise, PresetBalanced:
		return ModelPreset(name)
	default:
		return PresetBalanced
	}
}

type ModelConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

type OpenAIConfig struct {
	Temperature float32
	MaxTokens   int
	TopP        float32
}

type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
}

type GenerateOptions struct {
	Model     string
	Overrides *ModelConfig
}

// GetPresetConfig returns the Gemini configuration for a preset.
// Output budgets leave room for the model's thinking tokens on top of a 500-word summary.
func GetPresetConfig(preset ModelPreset) ModelConfig {
	switch preset {
	case PresetCreative:
		return ModelConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 4096,
		}
	case PresetPrecise:
		return ModelConfig{
			Temperature:     0.1,
			TopP:            0.9,
			TopK:            20,
			MaxOutputTokens: 4096,
		}
	case PresetBalanced:
		return ModelConfig{
			Temperature:     0.4,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 8192,
		}
	default:
		return GetPresetConfig(PresetBalanced)
	}
}

func GetOpenAIPresetConfig(preset ModelPreset) OpenAIConfig {
	switch preset {
	case PresetCreative:
		return OpenAIConfig{
			Temperature: 0.7,
			MaxTokens:   4096,
			TopP:        0.95,
		}
	case PresetPrecise:
		return OpenAIConfig{
			Temperature: 0.1,
			MaxTokens:   4096,
			TopP:        0.9,
		}
	case PresetBalanced:
		return OpenAIConfig{
			Temperature: 0.4,
			MaxTokens:   8192,
			TopP:        0.95,
		}
	default:
		return GetOpenAIPresetConfig(PresetBalanced)
	}
}

func (c ModelConfig) withOverrides(o *ModelConfig) ModelConfig {
	if o == nil {
		return c
	}
	if o.Temperature > 0 {
		c.Temperature = o.Temperature
	}
	if o.TopP > 0 {
		c.TopP = o.TopP
	}
	if o.TopK > 0 {
		c.TopK = o.TopK
	}
	if o.MaxOutputTokens > 0 {
		c.MaxOutputTokens = o.MaxOutputTokens
	}
	return c
}
