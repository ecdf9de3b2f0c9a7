package cmd

import (
	"github.com/etnz/costbasis/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	csv := predict.Files("*.csv")
	report := &complete.Command{
		Flags: map[string]complete.Predictor{
			"f":           csv,
			"file":        csv,
			"s":           predict.Nothing,
			"symbol":      predict.Nothing,
			"n":           predict.Nothing,
			"no-summary":  predict.Nothing,
			"d":           predict.Something,
			"days":        predict.Something,
			"v":           predict.Nothing,
			"verbose":     predict.Nothing,
			"l":           predict.Nothing,
			"live":        predict.Nothing,
			"markdown":    predict.Nothing,
			"o":           csv,
			"header-rows": predict.Something,
			"currency":    predict.Something,
		},
	}
	prices := &complete.Command{
		Flags: map[string]complete.Predictor{
			"f":           csv,
			"file":        csv,
			"header-rows": predict.Something,
			"currency":    predict.Something,
		},
	}
	topics, _ := docs.GetAllTopics()
	topic := &complete.Command{Args: predict.Set(append([]string{"readme"}, topics...))}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report": report,
			"prices": prices,
			"topic":  topic,
		},
		Flags: map[string]complete.Predictor{
			"config":         predict.Files("*.yaml"),
			"provider":       predict.Set(Providers),
			"workers":        predict.Something,
			"eodhd-api-key":  predict.Something,
			"eodhd-exchange": predict.Something,
			"quote-url":      predict.Something,
			"quote-path":     predict.Something,
			"log-level":      predict.Set{"debug", "info", "warn", "error"},
			"log-file":       predict.Files("*"),
		},
	}
}
