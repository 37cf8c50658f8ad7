// Package services contains the core application services: the RAG
// responder, ingestion, the concurrency gate (task registry and rate
// limiter), the gated chat flow, settings, and base-document seeding.
// Services depend only on domain types and port interfaces.
package services
