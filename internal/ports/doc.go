// Package ports defines the interfaces that connect the publishing pipeline
// to its collaborators.
//
// # Port Interfaces
//
//   - [DeviceResolver]: maps a user identifier to the linked device
//   - [ObjectLister]: enumerates stored objects under a prefix
//   - [URLSigner]: produces a time-limited URL for one stored object
//   - [BatchPublisher]: delivers one encoded batch to a device topic
//   - [LinkRegistry]: the user/device link records behind device resolution
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with S3, IoT
// Core, DynamoDB, HTTP and zerolog, and tests substitute counting fakes.
package ports
