// Package tariplan builds workspace-chained operation sequences for a
// ledger whose transactions are lists of instructions executed atomically.
//
// A sequence can:
//   - Reserve fees from an account component
//   - Call template functions and component methods
//   - Save a call's result in the sequence's workspace and pass it to later
//     calls without executing anything locally
//
// # Basic Usage
//
// Create a sequence, add steps, and build:
//
//	account := address.MustParse("component_...")
//	league := address.MustParse("component_...")
//
//	seq := tariplan.New().
//		ReserveFee(account, 2000).
//		CallMethod(league, "create_user").
//		SaveResult("player_nft").
//		CallMethod(account, "deposit", tariplan.WorkspaceRef("player_nft"))
//
//	unsigned, err := seq.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Submit through the wallet
//	diff, err := pipeline.Submit(ctx, unsigned, acct, nil)
//
// # Arguments
//
// Arguments in a sequence can be:
//
//   - Literals: values known when building (created automatically from Go
//     values or explicitly with Literal(), Amount(), Address(), etc.)
//
//   - Workspace references: results of earlier calls saved with
//     SaveResult, created with WorkspaceRef() or returned by Bind()
//
// # Validation
//
// Builder methods never fail. Build checks the whole sequence at once:
//
//   - Every SaveResult directly follows a call and binds a fresh name
//   - Every workspace reference names a binding made by a strictly earlier step
//   - Fee payers and method targets are component addresses
//
// Resolution of workspace references happens on the ledger when the
// sequence runs; Build only checks that each name is bound before use.
//
// # Related Packages
//
//   - valuetree decodes the ledger's self-describing values
//   - address renders and abbreviates entity addresses
//   - wallet submits built sequences and classifies the outcome
//   - substate scans the resulting state diff for created entities
package tariplan
