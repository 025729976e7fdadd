// Package openai implements the ai interfaces for OpenAI-compatible
// endpoints, including local servers such as Ollama and LocalAI.
package openai
