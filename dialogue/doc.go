// Package dialogue tracks a bounded window of conversation turns and
// their entities so follow-up queries can be detected and answered with
// conversational context.
package dialogue
