/*
Package registry manages model-type registration and field access for ObjectStore.

The registry system enables:
  - Name-keyed collections in a single store
  - Typed predicate evaluation without call-site reflection
  - Relation fields resolved for pk-based lookups

Registering a model builds its field-accessor table once:

	registry.Register[Book]("Book")

Field names are matched case-insensitively, embedded struct fields are
flattened, and a model's "ID" field is reachable under the alias "pk".
Fields whose type carries a PK() method are recorded as relation fields,
which is what allows an instance-scoped manager to filter a collection by
its owner's primary key.

The registry is thread-safe and should be populated during initialization,
typically in init() functions or through code generated by the modelmap
processor.
*/
package registry
