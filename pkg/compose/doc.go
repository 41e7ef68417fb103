// Package compose merges application-call descriptors into a single atomic
// transaction group.
//
// The composer inserts the payment legs each call asks for, pools the whole
// group fee on one anchor transaction, optionally moves every cross-call
// resource reference onto that anchor, and stamps the group ID. It never
// signs or submits; see package submit for that.
//
// # Getting Started
//
//	group, err := compose.Compose([]compose.OperationDescriptor{approve, register, setName}, compose.Options{
//		Params:          params,
//		Fee:             15000,
//		Beacon:          registrarAppID,
//		ResourceSharing: true,
//	})
//	if err != nil {
//		return err
//	}
//	fmt.Println(len(group.Transactions), group.Fee)
package compose
