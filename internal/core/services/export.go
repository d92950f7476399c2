package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reqif-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// documentNamespace seeds the name-based identifiers of documents that
// have no configured header identifier.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.omg.org/spec/ReqIF"))

// ExportService coordinates loading a source and producing a document.
type ExportService struct {
	factory    driven.ConnectorFactory
	registry   driven.NormaliserRegistry
	pipelines  driven.PipelineBuilder
	serializer driven.Serializer
	sink       driven.DocumentSink
	clocks     driven.ClockProvider
}

// NewExportService creates a new export service.
// registry and pipelines are optional: without a registry every text is
// plain, without pipelines items pass through unchanged.
func NewExportService(
	factory driven.ConnectorFactory,
	registry driven.NormaliserRegistry,
	pipelines driven.PipelineBuilder,
	serializer driven.Serializer,
	sink driven.DocumentSink,
	clocks driven.ClockProvider,
) *ExportService {
	return &ExportService{
		factory:    factory,
		registry:   registry,
		pipelines:  pipelines,
		serializer: serializer,
		sink:       sink,
		clocks:     clocks,
	}
}

// Outline loads the configured source and runs the post-processor pipeline.
func (s *ExportService) Outline(ctx context.Context, settings domain.AppSettings) (*domain.Outline, error) {
	if s.factory == nil {
		return nil, errors.New("create connector: connector factory not configured")
	}

	logger.Section("Load")
	connector, err := s.factory.Create(settings.Source)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate %s: %w", settings.Source.DisplayName(), err)
	}

	outline, err := connector.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", settings.Source.DisplayName(), err)
	}
	logger.Info("Loaded %d items from %s", len(outline.Items), settings.Source.DisplayName())

	if s.pipelines != nil && len(settings.Processors) > 0 {
		pipeline, err := s.pipelines.Pipeline(settings.Processors, settings.ProcessorConfigs)
		if err != nil {
			return nil, fmt.Errorf("build pipeline: %w", err)
		}
		items, err := pipeline.Process(ctx, outline.Items)
		if err != nil {
			return nil, fmt.Errorf("process outline: %w", err)
		}
		logger.Debug("Pipeline %v: %d -> %d items", settings.Processors, len(outline.Items), len(items))
		outline.Items = items
	}

	if len(outline.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", settings.Source.DisplayName(), domain.ErrEmptyOutline)
	}
	return outline, nil
}

// Build loads the source and assembles the document.
func (s *ExportService) Build(ctx context.Context, settings domain.AppSettings) (*domain.Document, error) {
	clock, err := s.clock(settings.FixedClock)
	if err != nil {
		return nil, err
	}

	outline, err := s.Outline(ctx, settings)
	if err != nil {
		return nil, err
	}

	normaliser, err := s.normaliser(settings.TextFormat)
	if err != nil {
		return nil, err
	}

	logger.Section("Build")
	now := clock.Now()
	reg := domain.NewTypeRegistry(now)
	doc := domain.NewDocument(domain.Header{
		Identifier:   DocumentIdentifier(settings),
		CreationTime: now,
		RepositoryID: settings.Header.RepositoryID,
		ReqIFToolID:  settings.Header.ToolID,
		SourceToolID: settings.Header.SourceToolID,
		Title:        settings.Header.Title,
	}, reg)

	spec, err := domain.NewSpecification(settings.Specification.Identifier, now, settings.Specification.Name, reg)
	if err != nil {
		return nil, fmt.Errorf("specification: %w", err)
	}
	if err := doc.AddSpecification(spec); err != nil {
		return nil, fmt.Errorf("specification: %w", err)
	}

	for _, item := range outline.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.addItem(ctx, doc, spec, normaliser, item, now); err != nil {
			return nil, fmt.Errorf("item %s: %w", item.ID, err)
		}
	}
	logger.Info("Built %d requirements (hierarchy depth %d)", len(outline.Items), spec.Hierarchy().Depth()+1)

	if settings.Strict {
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("validate document: %w", err)
		}
		logger.Debug("Document validated")
	}
	return doc, nil
}

// Render serializes a built document.
func (s *ExportService) Render(doc *domain.Document, indent bool) ([]byte, error) {
	if s.serializer == nil {
		return nil, fmt.Errorf("%w: serializer not configured", domain.ErrSerialization)
	}

	logger.Section("Serialize")
	data, err := s.serializer.Serialize(doc, indent)
	if err != nil {
		return nil, err
	}
	logger.Info("Rendered %d bytes", len(data))
	return data, nil
}

// Export builds, renders and writes the document to settings.Output.Path.
func (s *ExportService) Export(ctx context.Context, settings domain.AppSettings) (*driving.ExportResult, error) {
	if s.sink == nil {
		return nil, fmt.Errorf("%w: sink not configured", domain.ErrSinkFailure)
	}

	doc, err := s.Build(ctx, settings)
	if err != nil {
		return nil, err
	}

	data, err := s.Render(doc, settings.Output.Indent)
	if err != nil {
		return nil, err
	}

	logger.Section("Write")
	written, err := s.sink.Write(ctx, settings.Output.Path, data)
	if err != nil {
		return nil, err
	}
	if written.Written {
		logger.Info("Wrote %s (%s)", written.Destination, written.Digest)
	} else {
		logger.Info("%s is up to date", written.Destination)
	}

	return &driving.ExportResult{
		Destination:  written.Destination,
		Requirements: len(doc.Requirements()),
		Bytes:        written.Bytes,
		Digest:       written.Digest,
		Written:      written.Written,
	}, nil
}

// WatchPaths returns the paths the configured source reads from.
func (s *ExportService) WatchPaths(ctx context.Context, settings domain.AppSettings) ([]string, error) {
	if s.factory == nil {
		return nil, errors.New("create connector: connector factory not configured")
	}
	connector, err := s.factory.Create(settings.Source)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate %s: %w", settings.Source.DisplayName(), err)
	}
	paths := connector.WatchPaths()
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s sources cannot be watched", domain.ErrUnsupportedType, settings.Source.Type)
	}
	return paths, nil
}

// DocumentIdentifier returns the configured header identifier, or a stable
// name-based one derived from the repository and specification identifiers.
func DocumentIdentifier(settings domain.AppSettings) string {
	if settings.Header.Identifier != "" {
		return settings.Header.Identifier
	}
	name := settings.Header.RepositoryID + "/" + settings.Specification.Identifier
	return "_" + uuid.NewSHA1(documentNamespace, []byte(name)).String()
}

func (s *ExportService) addItem(
	ctx context.Context,
	doc *domain.Document,
	spec *domain.Specification,
	normaliser driven.Normaliser,
	item domain.OutlineItem,
	now string,
) error {
	lastChange := item.LastChange
	if lastChange == "" {
		lastChange = now
	}

	body := domain.PlainText(item.Text)
	if normaliser != nil {
		var err error
		if body, err = normaliser.Normalise(ctx, item.Text); err != nil {
			return fmt.Errorf("normalise text: %w", err)
		}
	}

	req, err := domain.NewRichRequirement(item.ID, lastChange, item.Title, body, doc.Registry())
	if err != nil {
		return err
	}
	if err := doc.AddRequirement(req); err != nil {
		return err
	}

	node := domain.NewHierarchyNode(item.HierarchyID(), lastChange, item.ID)
	if err := spec.Insert(node, item.Depth); err != nil {
		return err
	}
	logger.Debug("%s at depth %d (%s)", item.ID, item.Depth, item.Origin)
	return nil
}

// normaliser returns the normaliser for format, or nil for plain text
// when no registry is configured.
func (s *ExportService) normaliser(format domain.TextFormat) (driven.Normaliser, error) {
	if s.registry == nil {
		if format == domain.TextFormatPlain {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: text format %s: no normalisers configured", domain.ErrUnsupportedType, format)
	}
	n, err := s.registry.Get(format.String())
	if err != nil {
		return nil, fmt.Errorf("text format %s: %w", format, err)
	}
	return n, nil
}

func (s *ExportService) clock(fixed string) (driven.Clock, error) {
	if s.clocks == nil {
		return nil, errors.New("clock not configured")
	}
	clock, err := s.clocks(fixed)
	if err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}
	return clock, nil
}
