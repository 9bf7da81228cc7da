package contract

import "context"

type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (Intent, error)
}

type Extractor interface {
	Extract(ctx context.Context, req ExtractRequest) (Extraction, error)
}

type Responder interface {
	Respond(ctx context.Context, req RespondRequest) (string, error)
}

type Specialist interface {
	Run(ctx context.Context, req SpecialistRequest) (SpecialistResponse, error)
}

type Registry interface {
	Authenticator() Specialist
	Planning() Specialist
	Info() Specialist
	Confirmation() Specialist
}
