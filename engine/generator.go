// Package engine ties the generation pipeline together: template resolution,
// style derivation, concurrent asset resolution, cost aggregation,
// pagination, composition and rendering. One Generator serves all three
// report variants; nothing survives a generation call.
package engine

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"report-generator-service/assets"
	"report-generator-service/compose"
	"report-generator-service/config"
	"report-generator-service/costs"
	"report-generator-service/metrics"
	"report-generator-service/models"
	"report-generator-service/propertymap"
	"report-generator-service/render"
	"report-generator-service/styles"
	"report-generator-service/template"
)

// Generator is the report generation engine. It is safe for concurrent use;
// each call builds its own composer and renderer.
type Generator struct {
	cfg      *config.Config
	resolver *assets.Resolver
	maps     *propertymap.Composer
	money    *costs.Formatter
}

// New builds a generator from service configuration.
func New(cfg *config.Config) *Generator {
	return &Generator{
		cfg: cfg,
		resolver: assets.NewResolver(
			cfg.FetchTimeout,
			cfg.FetchRetries,
			cfg.MaxConcurrentFetches,
			cfg.MaxImageDimension,
			cfg.UserAgent,
		),
		maps:  propertymap.NewComposer(cfg.OSMTileURL, cfg.FetchTimeout, cfg.UserAgent),
		money: costs.NewFormatter(cfg.CurrencyLocale, cfg.CurrencySymbol),
	}
}

// GenerateStandard produces the fixed-template inspection report.
func (g *Generator) GenerateStandard(ctx context.Context, input *models.InspectionInput) ([]byte, error) {
	return g.generate(ctx, compose.VariantStandard, input, nil)
}

// GenerateTemplated produces an inspection report styled by the caller's
// template configuration.
func (g *Generator) GenerateTemplated(ctx context.Context, input *models.InspectionInput, override *models.TemplateOverride) ([]byte, error) {
	return g.generate(ctx, compose.VariantTemplated, input, override)
}

// generate runs the single-inspection pipeline for the standard and
// templated variants.
func (g *Generator) generate(ctx context.Context, variant compose.Variant, input *models.InspectionInput, override *models.TemplateOverride) ([]byte, error) {
	start := time.Now()
	reqID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"request_id": reqID,
		"variant":    string(variant),
		"inspection": input.Inspection.ID,
	})

	// Template validation is the only pre-generation failure.
	cfg, err := template.Resolve(override)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(string(variant), "invalid_template").Inc()
		return nil, err
	}

	sheet := styles.Derive(cfg)
	roomAssets := g.resolveRooms(ctx, input.Rooms)
	costSummary := costs.Aggregate(input.Rooms)
	mapImage := g.composeMap(ctx, input)

	composer := compose.New(variant, cfg)
	plan := composer.ComposeInspection(compose.Inspection{
		Input:      input,
		RoomAssets: roomAssets,
		Costs:      costSummary,
		MapImage:   mapImage,
	})

	doc, err := render.NewRenderer(sheet, cfg.Branding, g.money).Render(plan)
	if err != nil {
		logger.WithError(err).Error("report rendering failed")
		metrics.GenerationsTotal.WithLabelValues(string(variant), "render_error").Inc()
		return nil, err
	}

	logger.WithFields(log.Fields{
		"pages":    len(plan),
		"photos":   input.PhotoCount(),
		"bytes":    len(doc),
		"duration": time.Since(start).String(),
	}).Info("report generated")
	metrics.GenerationsTotal.WithLabelValues(string(variant), "ok").Inc()
	metrics.GenerationDurationSeconds.WithLabelValues(string(variant)).Observe(time.Since(start).Seconds())

	return doc, nil
}

// GenerateComparison produces the two-inspection comparison report.
func (g *Generator) GenerateComparison(ctx context.Context, pair *models.ComparisonInput, override *models.TemplateOverride) ([]byte, error) {
	start := time.Now()
	variant := compose.VariantComparison
	logger := log.WithFields(log.Fields{
		"request_id": uuid.NewString(),
		"variant":    string(variant),
		"before":     pair.Before.Inspection.ID,
		"after":      pair.After.Inspection.ID,
	})

	cfg, err := template.Resolve(override)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(string(variant), "invalid_template").Inc()
		return nil, err
	}

	sheet := styles.Derive(cfg)
	beforeAssets := g.resolveRooms(ctx, pair.Before.Rooms)
	afterAssets := g.resolveRooms(ctx, pair.After.Rooms)

	composer := compose.New(variant, cfg)
	plan := composer.ComposeComparison(compose.Comparison{
		Pair:         pair,
		BeforeAssets: beforeAssets,
		AfterAssets:  afterAssets,
	})

	doc, err := render.NewRenderer(sheet, cfg.Branding, g.money).Render(plan)
	if err != nil {
		logger.WithError(err).Error("comparison rendering failed")
		metrics.GenerationsTotal.WithLabelValues(string(variant), "render_error").Inc()
		return nil, err
	}

	logger.WithFields(log.Fields{
		"pages":    len(plan),
		"duration": time.Since(start).String(),
	}).Info("comparison report generated")
	metrics.GenerationsTotal.WithLabelValues(string(variant), "ok").Inc()
	metrics.GenerationDurationSeconds.WithLabelValues(string(variant)).Observe(time.Since(start).Seconds())

	return doc, nil
}

// resolveRooms fans out one fetch per photo across all rooms at once and
// regroups the flat result per room, preserving photo order.
func (g *Generator) resolveRooms(ctx context.Context, rooms []models.Room) [][]assets.ResolvedAsset {
	var urls []string
	for _, room := range rooms {
		for _, photo := range room.Photos {
			urls = append(urls, photo.URL)
		}
	}

	flat := g.resolver.Resolve(ctx, urls)

	out := make([][]assets.ResolvedAsset, len(rooms))
	offset := 0
	for i, room := range rooms {
		out[i] = flat[offset : offset+len(room.Photos)]
		offset += len(room.Photos)
	}
	return out
}

// composeMap renders the property-location map when coordinates are present
// and a technical section exists to hold it. Failures only omit the map.
func (g *Generator) composeMap(_ context.Context, input *models.InspectionInput) []byte {
	if input.Technical == nil || input.Property.Latitude == nil || input.Property.Longitude == nil {
		return nil
	}

	img, err := g.maps.Compose(*input.Property.Latitude, *input.Property.Longitude, input.Property.Boundary)
	if err != nil {
		log.WithError(err).Warn("property map unavailable, omitting map page")
		return nil
	}
	return img
}
