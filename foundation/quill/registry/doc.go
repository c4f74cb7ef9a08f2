// Package registry manages the native functions exposed to Quill code.
//
// Natives are Go functions of type ast.NativeFunc. They receive already
// evaluated arguments, with valueless ones dropped, and may return nil
// for no value. Install binds every registered function and alias into
// a root scope:
//
//	reg, err := registry.New(registry.Options{Output: os.Stdout})
//	if err != nil {
//		return err
//	}
//	root := environment.New(nil)
//	reg.Install(root)
//
// The builtins print and println write the display form of their
// arguments to Options.Output and evaluate to true. Either can be left
// out through Options.Disabled.
package registry
