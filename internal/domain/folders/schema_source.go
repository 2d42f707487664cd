package folders

import "context"

// SchemaOf expone el esquema vigente de una carpeta.
// Se usa para evitar ciclos de imports entre módulos (folders <-> titulares).
func (s *Service) SchemaOf(ctx context.Context, folderID string) (Schema, error) {
	f, err := s.GetByID(ctx, folderID)
	if err != nil {
		return Schema{}, err
	}
	return f.Schema, nil
}
