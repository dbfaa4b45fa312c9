// Package agent contains the conversational reply agent of chatmem and its
// supporting utilities. The package focuses on two concerns:
//
//  1. Instruction resolution (static templates or dynamic providers)
//  2. ChatAgent, which couples a core.MemoryStore with an ordered chain of
//     model.Model providers
//
// Execution Model:
//   - Reply appends the user input to memory, renders the instruction with
//     the recent memory window and asks each model in turn
//   - The first successful model wins; if all fail the agent still produces a
//     displayable fallback reply carrying the error
//   - The reply is appended to memory before it is returned
//
// The package keeps persistence and provider specifics in their respective
// packages to avoid cyclic deps.
package agent
