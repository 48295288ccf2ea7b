// Package execution tracks the result of instruction execution on the CPU.
// The Result type stores detailed information about each instruction
// encountered during a program execution on the CPU, for use by debuggers
// and tracing hooks.
//
// The Result.IsValid() function checks whether results are consistent with
// the instruction definition. The CPU's ExecuteInstruction calls it after
// every decoded instruction and returns any error it reports.
package execution
