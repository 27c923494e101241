/*
Package lendpool defines the common interfaces used to weave together the
lending ledger subpackages, as well as implementations of some of the
simpler components (when interfaces would be too much overhead).

We pass context through context.Context between app, middleware, and
handlers. To do so, lendpool defines some common keys to store info, such
as the block time and the logger. There exist two functions for every XYZ
of type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithBlockTime panics if the value was previously set to avoid lower-level
modules overwriting the transaction clock.
*/
package lendpool
