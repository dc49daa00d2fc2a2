// File: services/nlu/interface.go
package nlu

import "roomly/models"

// Classifier scores an utterance against the candidate intents. The rule
// engine is the default strategy; implementations backed by a model plug in
// behind the same contract.
type Classifier interface {
	Classify(text string) models.IntentResult
}

// Extractor pulls structured entities out of raw text.
type Extractor interface {
	Extract(text string) models.EntitySet
}
