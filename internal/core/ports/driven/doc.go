// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for an export to run:
//
//   - Connector: Reads an outline of requirements from a source
//   - ConnectorFactory: Creates connectors from source configuration
//   - Serializer: Renders a document as interchange XML
//   - DocumentSink: Writes the rendered bytes to their destination
//   - ClockProvider: Builds the Clock that supplies RFC3339 timestamps
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the export degrades gracefully:
//
//   - NormaliserRegistry: Converts requirement text to XHTML. Without it, text is plain.
//   - PipelineBuilder: Assembles the PostProcessorPipeline named in settings. Without it, items pass through.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
