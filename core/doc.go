// Package core provides the provider-neutral types shared by every LLM
// backend adapter: conversation messages, chat requests and responses,
// streaming primitives, and the normalized error taxonomy.
package core
