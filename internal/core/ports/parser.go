package ports

import "go.trai.ch/masq/internal/core/domain"

// Parser turns PDDL source text into the structural model.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type Parser interface {
	// ParseDomain parses a domain definition.
	ParseDomain(src []byte) (*domain.Domain, error)

	// ParseProblem parses a problem instance.
	ParseProblem(src []byte) (*domain.Problem, error)
}
